package cli

import apperrors "github.com/logiksutra/bookshelf-cli/internal/errors"

var errMissingName = apperrors.Validation("name is required")
