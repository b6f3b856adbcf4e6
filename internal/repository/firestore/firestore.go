// Package firestore implements the domain repositories against the hosted
// Firestore document store. All normalization of historical record shapes
// happens here, at the ingestion boundary; services only ever see the
// normalized domain types.
package firestore

import "time"

func unixMilliOrZero(ms int64) time.Time {
	if ms <= 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}
