package converter

import (
	"fmt"
	"io"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/tools/godoc/vfs"
)

// BatchItem reports the conversion of one bank in a folder
type BatchItem struct {
	Input   string
	Output  string
	Presets int
	Samples int
	Err     error
}

// ConvertFolder converts every .sf2 and .sf3 file at the root of fs into
// outDir. Each bank gets its own directory, or a zip archive when asZip is
// set. A failing bank is reported in its BatchItem and does not stop the
// others.
func (c *Converter) ConvertFolder(fs vfs.FileSystem, outDir string, asZip bool) ([]BatchItem, error) {
	infos, err := fs.ReadDir("/")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", fs.String(), err)
	}

	var names []string
	for _, info := range infos {
		if info.IsDir() || !DetectFormat(info.Name()).IsBank() {
			continue
		}
		names = append(names, info.Name())
	}
	sort.Strings(names)

	items := make([]BatchItem, 0, len(names))
	for _, name := range names {
		item := BatchItem{Input: name}
		baseName := strings.TrimSuffix(name, filepath.Ext(name))

		result, err := c.convertEntry(fs, path.Join("/", name), baseName)
		if err != nil {
			item.Err = err
			c.log.Warn("failed to convert bank", "bank", name, "error", err)
			items = append(items, item)
			continue
		}

		if asZip {
			item.Output = filepath.Join(outDir, baseName+".zip")
			err = result.WriteZipFile(item.Output)
		} else {
			item.Output = filepath.Join(outDir, baseName)
			err = result.WriteDir(item.Output)
		}
		if err != nil {
			item.Err = fmt.Errorf("failed to write output: %w", err)
		}
		item.Presets = len(result.Documents)
		item.Samples = len(result.Samples)
		items = append(items, item)
	}
	return items, nil
}

func (c *Converter) convertEntry(fs vfs.Opener, name, baseName string) (*Result, error) {
	data, err := readFile(fs, name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	if c.opts.BaseName != "" {
		baseName = c.opts.BaseName + " " + baseName
	}
	return c.convert(data, baseName)
}

func readFile(fs vfs.Opener, name string) (data []byte, err error) {
	file, err := fs.Open(name)
	if err != nil {
		return
	}
	data, err = io.ReadAll(file)
	_ = file.Close()
	return
}
