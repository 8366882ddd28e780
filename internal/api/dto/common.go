package dto

// Response 统一响应封装，Kind 为稳定的机器可读错误类别
type Response struct {
	Code    int         `json:"code"`
	Kind    string      `json:"kind"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}
