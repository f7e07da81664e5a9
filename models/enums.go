package models

// ResiStatus is only meaningful for scan-sourced resi; marketplace rows stay
// at their ingestion status and are never transitioned by matching.
type ResiStatus string

const (
	ResiStatusUnmatched ResiStatus = "unmatched"
	ResiStatusMatched   ResiStatus = "matched"
)

// Sumber (source) values. Marketplace rows use the lowercased marketplace
// name ("shopee", "tokopedia", ...) as their sumber, so the set is open.
const (
	SumberScan   = "scan"
	SumberManual = "manual"
)
