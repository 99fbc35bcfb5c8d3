package producer

import (
	"time"

	"github.com/sliink/expcollect/internal/model"
)

// CommitFilename is the document name for commit metadata records
const CommitFilename = "commit_metadata.json"

// CommitProducer captures version-control commit metadata. This is a stub:
// it returns fixed placeholder values in place of parsing actual git history.
type CommitProducer struct {
	BaseProducer
	repoPath     string
	commitHash   string
	author       string
	message      string
	filesChanged []string
}

// NewCommitProducer creates a new commit metadata producer
func NewCommitProducer(id string) *CommitProducer {
	return &CommitProducer{
		BaseProducer: NewBaseProducer(id, "Commit Metadata", model.CommitMetadataKind, CommitFilename),
		commitHash:   "abc123",
		author:       "developer@example.com",
		message:      "Implement feature X",
		filesChanged: []string{"src/module.py"},
	}
}

// Initialize prepares the commit producer for operation
func (p *CommitProducer) Initialize() bool {
	if repoPath, ok := p.Config["repo_path"].(string); ok {
		p.repoPath = repoPath
	}

	if hash, ok := p.Config["commit_hash"].(string); ok {
		p.commitHash = hash
	}

	if author, ok := p.Config["author"].(string); ok {
		p.author = author
	}

	if message, ok := p.Config["message"].(string); ok {
		p.message = message
	}

	if files, ok := p.Config["files_changed"].([]interface{}); ok {
		p.filesChanged = nil
		for _, f := range files {
			if path, ok := f.(string); ok {
				p.filesChanged = append(p.filesChanged, path)
			}
		}
	}

	p.SetStatus(model.StatusInitialized)
	return true
}

// Start begins commit producer operation
func (p *CommitProducer) Start() bool {
	p.SetStatus(model.StatusRunning)
	return true
}

// Stop halts commit producer operation
func (p *CommitProducer) Stop() bool {
	p.SetStatus(model.StatusStopped)
	return true
}

// Produce captures one commit metadata record
func (p *CommitProducer) Produce() (*model.Record, error) {
	now := p.Now()

	files := model.NewList()
	for _, f := range p.filesChanged {
		files.Append(model.String(f))
	}

	body := model.NewDocument().
		Set("commit_hash", model.String(p.commitHash)).
		Set("author", model.String(p.author)).
		Set("timestamp", model.String(now.UTC().Format(time.RFC3339))).
		Set("message", model.String(p.message)).
		Set("files_changed", files)

	return model.NewRecord(p.Kind(), p.ID(), now, body), nil
}
