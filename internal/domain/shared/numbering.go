package shared

import "fmt"

// SequenceBase is added to the collection size to form the next number
const SequenceBase = 1001

// SequenceNumber formats an advisory sequential number "<prefix>-<1001+count>".
// It is not unique under concurrent writers or after hard deletes.
func SequenceNumber(prefix string, count int) string {
	return fmt.Sprintf("%s-%d", prefix, SequenceBase+count)
}
