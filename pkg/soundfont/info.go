package soundfont

// INFO sub-chunk IDs
var (
	CIDIfil = [4]byte{'i', 'f', 'i', 'l'}
	CIDIsng = [4]byte{'i', 's', 'n', 'g'}
	CIDInam = [4]byte{'I', 'N', 'A', 'M'}
	CIDIrom = [4]byte{'i', 'r', 'o', 'm'}
	CIDIcrd = [4]byte{'I', 'C', 'R', 'D'}
	CIDIeng = [4]byte{'I', 'E', 'N', 'G'}
	CIDIprd = [4]byte{'I', 'P', 'R', 'D'}
	CIDIcop = [4]byte{'I', 'C', 'O', 'P'}
	CIDIcmt = [4]byte{'I', 'C', 'M', 'T'}
	CIDIsft = [4]byte{'I', 'S', 'F', 'T'}
)

// visitInfo fills sf.Info. Malformed INFO entries are ignored: they carry no
// data the converter depends on.
func (d *decoder) visitInfo(id [4]byte, body []byte) error {
	info := &d.sf.Info
	switch id {
	case CIDIfil:
		if len(body) >= 4 {
			info.Version = Version{Major: le.Uint16(body[0:2]), Minor: le.Uint16(body[2:4])}
		}
	case CIDIsng:
		info.Engine = decodeName(body)
	case CIDInam:
		info.Name = decodeName(body)
	case CIDIrom:
		info.ROM = decodeName(body)
	case CIDIcrd:
		info.Date = decodeName(body)
	case CIDIeng:
		info.Engineers = decodeName(body)
	case CIDIprd:
		info.Product = decodeName(body)
	case CIDIcop:
		info.Copyright = decodeName(body)
	case CIDIcmt:
		info.Comment = decodeName(body)
	case CIDIsft:
		info.Software = decodeName(body)
	default:
		d.log.Debug("skipping INFO sub-chunk", "id", string(id[:]))
	}
	return nil
}
