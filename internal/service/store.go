// Package service implements the application's business rules on top of the
// repository and storage layers.
package service

// ImageStore is the slice of the media store the services depend on.
type ImageStore interface {
	Save(bucket, rawName string, data []byte) (string, error)
	Replace(bucket, oldName, rawName string, data []byte) (string, error)
	Remove(bucket, name string)
}
