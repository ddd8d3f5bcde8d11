package scenefile

import (
	"github.com/aretw0/sceneswap/pkg/domain"
)

// EncodeTree packs root and encodes it with c.
func EncodeTree(c Codec, root *domain.Node) ([]byte, error) {
	ps, err := Pack(root)
	if err != nil {
		return nil, err
	}
	return c.Encode(ps)
}

// DecodeTree decodes data with c and rebuilds the live tree.
func DecodeTree(c Codec, data []byte) (*domain.Node, error) {
	ps, err := c.Decode(data)
	if err != nil {
		return nil, err
	}
	return Unpack(ps)
}
