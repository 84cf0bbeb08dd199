package ports

import "reqtool/internal/types"

// ManifestSourcePort loads requirement manifests, resolving -r includes
// relative to the including file.
type ManifestSourcePort interface {
	Load(path string) (types.Manifest, error)
	LoadAptfile(path string) (types.Aptfile, error)
}

// FileStorePort reads and writes manifest-adjacent files. Writes are
// atomic so a crashed run never leaves a truncated lock file.
type FileStorePort interface {
	Read(path string) ([]byte, error)
	Write(path string, data []byte) error
}
