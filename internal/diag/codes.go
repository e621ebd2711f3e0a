package diag

import (
	"fmt"
)

type Code uint16

const (
	// Unknown error, first resort only
	UnknownCode Code = 0

	// Descriptor / configuration
	CfgInfo          Code = 1000
	CfgNotFound      Code = 1001
	CfgParseError    Code = 1002
	CfgNoInputs      Code = 1003
	CfgBadExtensions Code = 1004

	// Engine options
	OptInfo          Code = 2000
	OptInvalidValue  Code = 2001
	OptBadOutDir     Code = 2002
	OptInputNotFound Code = 2003

	// Extensions
	ExtInfo       Code = 3000
	ExtLoadFailed Code = 3001
	ExtPreProcess Code = 3002
	ExtCodegen    Code = 3003

	// Syntax (engine unit scanner)
	SynInfo            Code = 4000
	SynMalformedImport Code = 4001
	SynEmptyImport     Code = 4002

	// Semantic (program-level)
	SemInfo             Code = 5000
	SemUnresolvedImport Code = 5001
	SemImportCycle      Code = 5002

	// Emission
	EmitInfo    Code = 6000
	EmitFailed  Code = 6001
	EmitSkipped Code = 6002

	// I/O
	IOLoadFileError  Code = 7000
	IOWriteFileError Code = 7001
)

var codeDescription = map[Code]string{
	UnknownCode:         "Unknown error",
	CfgInfo:             "Descriptor information",
	CfgNotFound:         "Project descriptor not found",
	CfgParseError:       "Failed to parse project descriptor",
	CfgNoInputs:         "Descriptor declares no inputs",
	CfgBadExtensions:    "Malformed extensions block",
	OptInfo:             "Option information",
	OptInvalidValue:     "Invalid option value",
	OptBadOutDir:        "Invalid output directory",
	OptInputNotFound:    "Input file not found",
	ExtInfo:             "Extension information",
	ExtLoadFailed:       "Extension failed to load",
	ExtPreProcess:       "Extension preprocess diagnostic",
	ExtCodegen:          "Extension codegen failure",
	SynInfo:             "Syntax information",
	SynMalformedImport:  "Malformed import statement",
	SynEmptyImport:      "Empty import specifier",
	SemInfo:             "Semantic information",
	SemUnresolvedImport: "Unresolved import",
	SemImportCycle:      "Import cycle detected",
	EmitInfo:            "Emission information",
	EmitFailed:          "Emission failed",
	EmitSkipped:         "Emission skipped",
	IOLoadFileError:     "I/O load file error",
	IOWriteFileError:    "I/O write file error",
}

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("CFG%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("OPT%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("EXT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("SEM%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("EMT%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
