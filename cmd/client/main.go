// hms 是 metastore 的命令行客户端。不带子命令时运行演示流程：
// 读取 -d 指定的 database，再列出 namespace 下的全部 database。
package main

import (
	"os"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
