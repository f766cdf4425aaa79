package domain

// MarkerName is the decorator name that marks a Python definition for documentation.
const MarkerName = "docullim"

// DefaultTag is the prompt tag used when a marker carries no tag.
const DefaultTag = "default"

// MarkerModulePath is the path, relative to the init directory, of the Python marker module.
const MarkerModulePath = "docullim/__init__.py"
