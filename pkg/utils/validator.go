package utils

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidEmailFormat = errors.New("无效的邮箱格式")
	ErrInvalidDateFormat  = errors.New("日期格式无效，请使用 YYYY-MM-DD 或类似格式") // 保持通用错误信息
	ErrInvalidUUIDFormat  = errors.New("无效的ID格式，必须是UUID")
)

// ValidateEmailFormat 校验邮箱格式。
func ValidateEmailFormat(email string) bool {
	trimmedEmail := strings.TrimSpace(email)
	if trimmedEmail == "" {
		return true // 空字符串不进行格式校验，业务逻辑决定是否允许为空
	}
	// 一个常用且相对简单的邮箱正则
	match, _ := regexp.MatchString(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`, trimmedEmail)
	return match
}

// ValidateUUID 校验字符串是否为合法UUID。
// 路径参数中的实体ID在进入仓库层之前先做格式校验。
func ValidateUUID(id string) error {
	if _, err := uuid.Parse(strings.TrimSpace(id)); err != nil {
		return ErrInvalidUUIDFormat
	}
	return nil
}

// ParseDate 解析日期字符串，支持多种常见格式。
// 支持 YYYY-MM-DD, YYYY/MM/DD, YYYY-M-D 及 RFC3339 等变体。
func ParseDate(dateStr string) (time.Time, error) {
	trimmedDateStr := strings.TrimSpace(dateStr)
	if trimmedDateStr == "" {
		return time.Time{}, ErrInvalidDateFormat // 空日期字符串视为无效
	}

	// 截止日期允许带时间的 RFC3339 形式
	if parsed, err := time.Parse(time.RFC3339, trimmedDateStr); err == nil {
		return parsed, nil
	}

	normalizedDateStr := strings.ReplaceAll(trimmedDateStr, "/", "-")

	// 包含补零和不补零的情况
	dateLayouts := []string{
		"2006-01-02", // YYYY-MM-DD
		"2006-1-2",   // YYYY-M-D
		"2006-01-2",  // YYYY-MM-D
		"2006-1-02",  // YYYY-M-DD
	}

	for _, layout := range dateLayouts {
		if parsed, err := time.Parse(layout, normalizedDateStr); err == nil {
			return parsed, nil
		}
	}
	// 所有格式尝试完毕后仍失败
	return time.Time{}, ErrInvalidDateFormat
}
