package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strconv"
	"strings"
	"time"
)

// SignUploadParams produces a Cloudinary upload signature: the parameters are
// sorted by key, joined as key=value pairs with "&", the API secret is
// appended and the whole string is SHA-1 hashed.
func SignUploadParams(params map[string]string, apiSecret string) string {
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+params[k])
	}

	sum := sha1.Sum([]byte(strings.Join(pairs, "&") + apiSecret))
	return hex.EncodeToString(sum[:])
}

// UploadSignature builds the payload the browser needs to upload directly to
// the media host into the given folder.
func UploadSignature(folder, cloudName, apiKey, apiSecret string) map[string]interface{} {
	timestamp := time.Now().Unix()
	signature := SignUploadParams(map[string]string{
		"timestamp": strconv.FormatInt(timestamp, 10),
		"folder":    folder,
	}, apiSecret)

	return map[string]interface{}{
		"timestamp":  timestamp,
		"signature":  signature,
		"folder":     folder,
		"cloud_name": cloudName,
		"api_key":    apiKey,
	}
}
