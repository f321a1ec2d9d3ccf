package converter

import (
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// entry is one output file, addressed by a slash-separated relative path
type entry struct {
	name string
	data []byte
}

// entries lists every output file of the result: per document the SFZ text,
// its samples under the document's sample folder and the optional preview
func (r *Result) entries() ([]entry, error) {
	var out []entry
	for _, doc := range r.Documents {
		out = append(out, entry{name: doc.Filename, data: []byte(doc.Text)})
		for _, name := range doc.Samples {
			s, ok := r.Sample(name)
			if !ok {
				return nil, fmt.Errorf("document %q references unknown sample %q", doc.Filename, name)
			}
			out = append(out, entry{name: path.Join(doc.SampleDir, name), data: s.Data})
		}
		if doc.Preview != nil {
			out = append(out, entry{name: doc.PreviewName(), data: doc.Preview})
		}
	}
	return out, nil
}

// WriteZip writes the result as a zip archive to w
func (r *Result) WriteZip(w io.Writer) error {
	files, err := r.entries()
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, f := range files {
		fw, err := zw.Create(f.name)
		if err != nil {
			return fmt.Errorf("failed to add %s: %w", f.name, err)
		}
		if _, err := fw.Write(f.data); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// WriteZipFile writes the zip archive to filename
func (r *Result) WriteZipFile(filename string) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", filename, err)
	}
	if err := r.WriteZip(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}

// WriteDir writes the result below dir using the archive layout
func (r *Result) WriteDir(dir string) error {
	files, err := r.entries()
	if err != nil {
		return err
	}
	for _, f := range files {
		target := filepath.Join(dir, filepath.FromSlash(f.name))
		if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", f.name, err)
		}
		if err := os.WriteFile(target, f.data, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", f.name, err)
		}
	}
	return nil
}
