// Package domain contains domain layer modules
package domain

import (
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/internal/domain/grab"
)

// Module provides all domain components for fx dependency injection
var Module = fx.Module("domain",
	grab.Module,
)
