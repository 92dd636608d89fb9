package domain

import "time"

// MediaKind says which record an uploaded image is meant for. It picks the
// key prefix in the bucket.
type MediaKind string

const (
	MediaLocation MediaKind = "location"
	MediaRegion   MediaKind = "region"
)

// MediaUpload describes a pending direct-to-storage image upload. The admin
// console PUTs the file to UploadURL and then saves PublicURL on a Location
// or the Region.
type MediaUpload struct {
	Key         string    `json:"key"`
	ContentType string    `json:"contentType"`
	UploadURL   string    `json:"uploadUrl"`
	PublicURL   string    `json:"publicUrl"`
	ExpiresAt   time.Time `json:"expiresAt"`
}
