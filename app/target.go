package app

type TargetKind string

const (
	KindIP       TargetKind = "IP"
	KindURL      TargetKind = "URL"
	KindLocation TargetKind = "Location"
)

type ScanTarget struct {
	Kind  TargetKind `json:"kind"`
	Value string     `json:"value"`
}
