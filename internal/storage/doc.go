// Package storage provides the object-storage layer for archived messages.
//
// BlobStore is the narrow interface the archive service writes through;
// S3Store is the production implementation over aws-sdk-go-v2.
package storage
