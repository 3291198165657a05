package utils

import (
	"crypto/sha1"
	"encoding/hex"
	"strconv"
)

// GitBlobSHA returns the hex SHA-1 git assigns to a blob with the given
// content: sha1("blob " + len + "\x00" + content). The self-hosted store uses
// it as the document version, matching the hosted contents API.
func GitBlobSHA(content []byte) string {
	h := sha1.New()
	h.Write([]byte("blob " + strconv.Itoa(len(content)) + "\x00"))
	h.Write(content)
	return hex.EncodeToString(h.Sum(nil))
}
