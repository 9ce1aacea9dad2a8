package common

// CompilerVersion is the current compiler version as a string.
const CompilerVersion string = "0.1.0"

// ManifestFileName is the name of package manifest files.
const ManifestFileName string = "emojicode.toml"

// SourceFileExt is the file extension for an Emojicode source file.
const SourceFileExt string = ".emojic"

// CacheDirName is the compilation caching directory name.
const CacheDirName string = ".emojicode"
