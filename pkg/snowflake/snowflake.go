package snowflake

import "github.com/bwmarrin/snowflake"

var node *snowflake.Node

func init() {
	node, _ = snowflake.NewNode(1)
}

// GenNoteID 笔记 ID，十进制字符串，同时用作 json 文件名
func GenNoteID() string {
	return node.Generate().String()
}
