package domain

// MaxPhotoBytes caps the size of an uploaded profile photo (2 MiB).
const MaxPhotoBytes = 2 << 20

var allowedPhotoTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
}

// PhotoExtension returns the file extension stored for an accepted photo
// MIME type, and false for anything that is not JPEG or PNG.
func PhotoExtension(mime string) (string, bool) {
	ext, ok := allowedPhotoTypes[mime]
	return ext, ok
}
