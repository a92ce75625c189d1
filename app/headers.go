package app

// HeaderKV holds extra header key-value pairs. Applied to every reputation
// request on top of the credential header.
type HeaderKV map[string]string
