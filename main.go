// @title Quiz Scoring 后端 API
// @version 1.0
// @description 测验答卷评分与作答审计服务。

// @host localhost:8080
// @BasePath /

package main

import (
	"os"

	"quiz_scoring_backend/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
