// ============================================================================
// 测试 Token 生成脚本
// ============================================================================
//
// 用途：生成用于接口调试的 JWT Token
// 运行：go run tools/gentoken/main.go -user 10001 -role student
//
// ============================================================================

package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"community-platform/common/utils/jwt"
)

var (
	userID = flag.Int64("user", 10001, "测试用户ID")
	role   = flag.String("role", "student", "角色: student | staff | admin")
	secret = flag.String("secret", "change-me-in-production", "AccessSecret，与 etc/search-api.yaml 保持一致")
	expire = flag.Int64("expire", 7*24*3600, "有效期（秒）")
)

func main() {
	flag.Parse()

	result, err := jwt.GenerateToken(*userID, jwt.Role(*role), jwt.AuthConfig{
		Secret: *secret,
		Expire: *expire,
	})
	if err != nil {
		fmt.Printf("生成 Token 失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("============================================")
	fmt.Println("测试 JWT Token 生成成功！")
	fmt.Println("============================================")
	fmt.Printf("用户ID: %d\n", *userID)
	fmt.Printf("角色: %s\n", *role)
	fmt.Printf("过期时间: %s\n", time.Unix(result.ExpireAt, 0).Format("2006-01-02 15:04:05"))
	fmt.Println("--------------------------------------------")
	fmt.Println("Token:")
	fmt.Println(result.Token)
	fmt.Println("--------------------------------------------")
	fmt.Println("Header 配置:")
	fmt.Printf("Authorization: Bearer %s\n", result.Token)
	fmt.Println("============================================")
}
