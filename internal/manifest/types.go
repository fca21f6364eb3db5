package manifest

// Manifest is a declarative provisioner set.
type Manifest struct {
	// Requires is a semver constraint on the engine version.
	Requires string     `yaml:"requires,omitempty" toml:"requires,omitempty" json:"requires,omitempty"`
	Files    []FileSpec `yaml:"files" toml:"files" json:"files"`
}

// FileSpec declares one target path.
type FileSpec struct {
	Path        string              `yaml:"path" toml:"path" json:"path"`
	Kind        string              `yaml:"kind,omitempty" toml:"kind,omitempty" json:"kind,omitempty"`
	Permissions string              `yaml:"permissions,omitempty" toml:"permissions,omitempty" json:"permissions,omitempty"`
	Contents    *ContentsSpec       `yaml:"contents,omitempty" toml:"contents,omitempty" json:"contents,omitempty"`
	Questions   []QuestionSpec      `yaml:"questions,omitempty" toml:"questions,omitempty" json:"questions,omitempty"`
	Before      []string            `yaml:"before,omitempty" toml:"before,omitempty" json:"before,omitempty"`
	Command     []string            `yaml:"command,omitempty" toml:"command,omitempty" json:"command,omitempty"`
	After       []string            `yaml:"after,omitempty" toml:"after,omitempty" json:"after,omitempty"`
	Hooks       map[string][]string `yaml:"hooks,omitempty" toml:"hooks,omitempty" json:"hooks,omitempty"`
}

// ContentsSpec holds exactly one way of producing a file's contents.
type ContentsSpec struct {
	Static   *string `yaml:"static,omitempty" toml:"static,omitempty" json:"static,omitempty"`
	Script   string  `yaml:"script,omitempty" toml:"script,omitempty" json:"script,omitempty"`
	Template *string `yaml:"template,omitempty" toml:"template,omitempty" json:"template,omitempty"`
}

// QuestionSpec declares an interactive question.
type QuestionSpec struct {
	Name        string   `yaml:"name" toml:"name" json:"name"`
	Message     string   `yaml:"message,omitempty" toml:"message,omitempty" json:"message,omitempty"`
	Type        string   `yaml:"type,omitempty" toml:"type,omitempty" json:"type,omitempty"`
	Choices     []string `yaml:"choices,omitempty" toml:"choices,omitempty" json:"choices,omitempty"`
	Default     any      `yaml:"default,omitempty" toml:"default,omitempty" json:"default,omitempty"`
	DefaultExpr string   `yaml:"default_expr,omitempty" toml:"default_expr,omitempty" json:"default_expr,omitempty"`
	When        string   `yaml:"when,omitempty" toml:"when,omitempty" json:"when,omitempty"`
}
