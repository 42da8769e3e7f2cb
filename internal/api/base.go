package api

// DefaultBaseURL is where the search backend listens out of the box.
const DefaultBaseURL = "http://localhost:4567"
