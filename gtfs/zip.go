package gtfs

import (
	"github.com/klauspost/compress/zip"

	"github.com/hupe1980/transitgo"
)

// ReadZip loads a GTFS feed from a zip archive. The member files must
// sit at the archive root, as mandated by the GTFS reference.
func ReadZip(path string, opts ...Option) (*transitgo.Model, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return Read(&rc.Reader, opts...)
}
