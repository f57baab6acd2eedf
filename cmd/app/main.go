package main

import (
	"go.uber.org/fx"

	"github.com/Ethiocoderss/tgbot/internal/app"
)

func main() {
	fx.New(app.CreateApp()).Run()
}
