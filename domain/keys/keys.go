package keys

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
)

const delimiter = ":"

// RedisKey joins key parts with ":" under the service namespace
func RedisKey(keys ...string) string {
	return strings.Join(append([]string{"venue"}, keys...), delimiter)
}

// CustomKey joins key parts without the namespace prefix
func CustomKey(keys ...string) string {
	return strings.Join(keys, delimiter)
}

// MD5 digests a long key into a fixed-length hex string
func MD5(key string) string {
	sum := md5.Sum([]byte(key))
	return hex.EncodeToString(sum[:])
}
