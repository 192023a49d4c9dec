package cmd

import (
	"github.com/BlazeZheng/simple-nas-music-player/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动音乐服务器",
	Long:  `扫描曲库目录，提供曲目列表、串流、封面和歌词接口，并在后台补全缺失的元数据`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
