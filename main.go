package main

import (
	"github.com/zxkane/aws-skills/cmd"
	"github.com/zxkane/aws-skills/internal/logger"
)

func main() {
	defer logger.Sync()
	cmd.Execute()
}
