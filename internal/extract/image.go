package extract

import (
	"encoding/base64"
	"os"
)

// encodeImageFile reads the image and returns its bytes base64-encoded for
// the vision request. No pixel analysis happens locally.
func encodeImageFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(data), nil
}
