package util

// TruncateContent cắt chuỗi về tối đa maxLength ký tự (rune), thêm "..." khi bị cắt.
func TruncateContent(content string, maxLength int) string {
	runes := []rune(content)
	if len(runes) <= maxLength {
		return content
	}
	return string(runes[:maxLength]) + "..."
}
