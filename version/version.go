package version

// Version is the released version of rolodex
const Version = "0.1.0"
