// Package provision is the provisioner orchestration engine. A Set maps
// project-relative paths to Entries describing desired contents, questions,
// permissions and lifecycle steps. A Runner resolves answers and contents,
// shows diffs, asks for confirmation, then runs the before stage, writes the
// confirmed entries, runs the command stage for every entry and finally runs
// the after stage.
package provision
