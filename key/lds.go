package key

import "github.com/kwiver/goklv/codec"

// LDS is a local-set key: a small unsigned integer encoded as BER-OID
//. It is typically one or two bytes on the wire.
type LDS uint64

// ReadLDS reads an LDS key from c.
func ReadLDS(c *codec.Cursor, max int) (LDS, error) {
	v, err := codec.ReadBEROID(c, max)
	return LDS(v), err
}

// WriteLDS writes an LDS key to c.
func WriteLDS(c *codec.Cursor, k LDS, max int) error {
	return codec.WriteBEROID(c, uint64(k), max)
}

// Length returns the number of bytes WriteLDS would emit for k.
func (k LDS) Length() int {
	return codec.BEROIDLength(uint64(k))
}
