package submission

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Fingerprint is the 0x prefixed lowercase hex keccak256 hash of warpRouteID and the two
// canonical config contents concatenated
func Fingerprint(warpRouteID, deployConfig, warpConfig string) string {
	hash := sha3.NewLegacyKeccak256()
	hash.Write([]byte(warpRouteID))
	hash.Write([]byte(deployConfig))
	hash.Write([]byte(warpConfig))

	return "0x" + hex.EncodeToString(hash.Sum(nil))
}

// BranchName is the content addressed name of the branch a submission is committed to
func BranchName(warpRouteID, deployConfig, warpConfig string) string {
	return warpRouteID + "-" + Fingerprint(warpRouteID, deployConfig, warpConfig)
}
