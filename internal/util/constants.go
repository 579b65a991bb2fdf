package util

const (
	StorageNone  = "none"
	StorageLocal = "local"
	StorageMinio = "minio"
	StorageOSS   = "oss"
)

const (
	CatalogSourceDB   = "db"
	CatalogSourceFile = "file"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100
	MaxPage      = 100000
)

const ContentTypeJSON = "application/json"
