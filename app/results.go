package app

type Results struct {
	Findings []Finding
}

type Finding struct {
	Kind   string `json:"kind"`
	Target string `json:"target"`
	Error  string `json:"error"`
}
