package domain

// SourceFile is a candidate file produced by the enumerator.
type SourceFile struct {
	Path         string `json:"path"`
	RelativePath string `json:"relative_path"`
	Kind         string `json:"kind"`
}

// StructuralRecord is the shallow per-file summary produced by an extractor.
// Entity slices are never nil once extraction has run: an empty slice means
// nothing of that kind was found.
type StructuralRecord struct {
	File       SourceFile        `json:"file"`
	Namespace  string            `json:"namespace,omitempty"`
	Types      []TypeEntity      `json:"types"`
	Interfaces []InterfaceEntity `json:"interfaces"`
	Enums      []EnumEntity      `json:"enums"`
	Functions  []string          `json:"functions"`
	Markers    Markers           `json:"markers"`
}

// NewRecord returns a record for f with every entity list initialised empty.
func NewRecord(f SourceFile) StructuralRecord {
	return StructuralRecord{
		File:       f,
		Types:      []TypeEntity{},
		Interfaces: []InterfaceEntity{},
		Enums:      []EnumEntity{},
		Functions:  []string{},
	}
}

// HasNamespace reports whether a namespace declaration was found.
func (r StructuralRecord) HasNamespace() bool { return r.Namespace != "" }

// MethodCount is the number of methods across all types in the record.
func (r StructuralRecord) MethodCount() int {
	n := 0
	for _, t := range r.Types {
		n += len(t.Methods)
	}
	return n
}

// Markers holds the marker-substring facts used by the component-framework
// and markup profiles.
type Markers struct {
	Component    bool `json:"component,omitempty"`
	Injectable   bool `json:"injectable,omitempty"`
	NgModule     bool `json:"ng_module,omitempty"`
	Template     bool `json:"template,omitempty"`
	Scripts      bool `json:"scripts,omitempty"`
	Styles       bool `json:"styles,omitempty"`
	MediaQueries bool `json:"media_queries,omitempty"`
	Elements     int  `json:"elements,omitempty"`
	Rules        int  `json:"rules,omitempty"`
}

// TypeEntity is a class-like declaration together with the methods found
// directly in its block.
type TypeEntity struct {
	Name    string            `json:"name"`
	Kind    string            `json:"kind"`
	Methods []MethodSignature `json:"methods"`
	Snippet string            `json:"snippet"`
	Line    int               `json:"line"`
	Start   int               `json:"start"`
	End     int               `json:"end"`
}

// MethodSignature is a method-like signature. ReturnType is raw text.
type MethodSignature struct {
	Name       string      `json:"name"`
	ReturnType string      `json:"return_type"`
	Parameters []Parameter `json:"parameters"`
	Line       int         `json:"line"`
}

type Parameter struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type InterfaceEntity struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

type EnumEntity struct {
	Name string `json:"name"`
	Line int    `json:"line"`
}

// DescriptorCounts holds the number of build descriptors found in a tree.
type DescriptorCounts struct {
	Solutions int `json:"solutions"`
	Projects  int `json:"projects"`
}

// AggregateProjectStructure is the tree-wide summary folded from records,
// shaped for embedding in an overview prompt.
type AggregateProjectStructure struct {
	RootPath            string        `json:"root_path"`
	Language            Language      `json:"language"`
	CommitHash          string        `json:"commit_hash,omitempty"`
	SolutionFiles       int           `json:"solution_files"`
	ProjectFiles        int           `json:"project_files"`
	TotalFiles          int           `json:"total_files"`
	FilesWithTypes      int           `json:"files_with_types"`
	FilesWithInterfaces int           `json:"files_with_interfaces"`
	FilesWithEnums      int           `json:"files_with_enums"`
	TotalTypes          int           `json:"total_types"`
	TotalMethods        int           `json:"total_methods"`
	Files               []FileSummary `json:"files"`
	Truncated           bool          `json:"truncated"`
	Vocabulary          []Term        `json:"vocabulary,omitempty"`
}

// FileSummary is one line of the capped per-file listing.
type FileSummary struct {
	RelativePath string `json:"relative_path"`
	Namespace    string `json:"namespace,omitempty"`
	Types        int    `json:"types"`
	Interfaces   int    `json:"interfaces"`
	Enums        int    `json:"enums"`
	Methods      int    `json:"methods"`
}

// Term is a word taken from declared type names, with its frequency.
type Term struct {
	Word  string `json:"word"`
	Count int    `json:"count"`
}

// SkippedFile records a file that was enumerated but produced no record.
type SkippedFile struct {
	RelativePath string `json:"relative_path"`
	Reason       string `json:"reason"`
}

// Extraction is the outcome of one run over a tree: the full record set and
// the aggregate built from it.
type Extraction struct {
	Records   []StructuralRecord        `json:"records"`
	Skipped   []SkippedFile             `json:"skipped,omitempty"`
	Structure AggregateProjectStructure `json:"structure"`
}
