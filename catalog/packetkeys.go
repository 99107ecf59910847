package catalog

import (
	"github.com/kwiver/goklv/key"
	"github.com/kwiver/goklv/klv"
)

// PacketKeys builds the aggregate packet-key lookup covering every
// representative standard this package models. Callers needing only one or two standards can build their
// own narrower lookup directly from the per-standard Format constructors.
func PacketKeys() *klv.PacketKeyLookup {
	return klv.NewPacketKeyLookup(map[key.UDS]klv.Format{
		ST0102Key: ST0102Format(),
		ST0104Key: ST0104Format(),
		ST0601Key: ST0601Format(),
		ST0806Key: ST0806Format(),
		ST0903Key: ST0903Format(),
		ST1002Key: ST1002Format(),
		ST1010Key: ST1010Format(),
		ST1108Key: ST1108Format(),
		ST1204Key: ST1204Format(),
	})
}
