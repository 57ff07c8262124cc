package utils

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// NewHTTPClient 创建配置好超时和 UA 的 Resty 客户端
// 它是全系统统一的网络请求出口，目前只有报价单拉取在用
func NewHTTPClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = 20 * time.Second
	}

	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Market-Go-App/1.0")
}
