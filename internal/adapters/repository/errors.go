package repository

import (
	"errors"
	"fmt"

	"github.com/okian/talentmatch/internal/config"
)

// Sentinel kinds for artifact store errors. Both are configuration errors.
var (
	ErrNotFound        = fmt.Errorf("%w: artifact not found", config.ErrConfiguration)
	ErrInvalidArtifact = fmt.Errorf("%w: invalid artifact", config.ErrConfiguration)
)

// ErrWrite marks a failed write of an artifact or report.
var ErrWrite = errors.New("write failed")
