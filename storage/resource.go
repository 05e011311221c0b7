package storage

import "github.com/DangerosoDavo/genid"

// Register publishes store in reg under name.
func Register(reg *genid.Registry, name string, store genid.Resource) error {
	if store == nil {
		return genid.ErrNilResource
	}
	return reg.Register(name, store)
}
