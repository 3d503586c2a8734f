package parser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/selimdilsadercan/foritu-web-sub000/backend/config"
	"github.com/selimdilsadercan/foritu-web-sub000/backend/internal/planning"
)

// ── 成绩单 PDF 解析服务客户端 ──────────────────────────────
//
// 解析由外部服务完成：上传原始 PDF 字节，返回结构化选课记录。
// 单次请求/响应，不可取消重试；三种结果：有数据成功、空结果
// 成功（与解析失败不同，表示"未发现内容"）、失败。
// ─────────────────────────────────────────────────────────

// ErrUnavailable 解析服务网络层不可达（与解析拒绝不同，对应 502）
var ErrUnavailable = errors.New("解析服务不可达")

// ParseError 外部解析服务返回的失败，消息原样透传给用户
type ParseError struct {
	Message string
}

func (e *ParseError) Error() string { return e.Message }

// Client 解析服务 HTTP 客户端
type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
	logger  *zap.Logger
}

// NewClient 创建解析服务客户端
func NewClient(cfg *config.ParserConfig, logger *zap.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		http:    &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

// 解析服务响应体：空 courses 且无 error 是合法的"未发现内容"
type parseResponse struct {
	Courses []planning.Attempt `json:"courses"`
	Error   string             `json:"error"`
}

// Parse 上传 PDF 字节并取回结构化选课记录
func (c *Client) Parse(ctx context.Context, fileBytes []byte) ([]planning.Attempt, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "transcript.pdf")
	if err != nil {
		return nil, fmt.Errorf("构建上传请求失败: %w", err)
	}
	if _, err := part.Write(fileBytes); err != nil {
		return nil, fmt.Errorf("构建上传请求失败: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("构建上传请求失败: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/parse", &body)
	if err != nil {
		return nil, fmt.Errorf("构建上传请求失败: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	if c.apiKey != "" {
		req.Header.Set("X-Api-Key", c.apiKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Error("解析服务请求失败", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("读取解析服务响应失败: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		c.logger.Error("解析服务返回异常状态",
			zap.Int("status", resp.StatusCode),
		)
		return nil, &ParseError{Message: fmt.Sprintf("解析服务返回状态 %d", resp.StatusCode)}
	}

	var parsed parseResponse
	if err := json.Unmarshal(data, &parsed); err != nil {
		return nil, &ParseError{Message: "解析服务返回了无法读取的内容"}
	}
	if parsed.Error != "" {
		return nil, &ParseError{Message: parsed.Error}
	}

	// 空 courses 且无 error：合法的"未发现内容"结果
	return parsed.Courses, nil
}
