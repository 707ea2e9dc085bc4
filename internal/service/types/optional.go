package types

import (
	"bytes"
	"encoding/json"
)

// Optional 三态可选字段：区分"未提交"与"提交了值"（包括显式 null）
// 零值表示字段未出现在请求中
type Optional[T any] struct {
	value T
	set   bool
}

// Some 构造已设置的 Optional
func Some[T any](value T) Optional[T] {
	return Optional[T]{value: value, set: true}
}

// IsSet 字段是否出现在请求中
func (o Optional[T]) IsSet() bool {
	return o.set
}

// Value 获取字段值，未设置时返回零值
func (o Optional[T]) Value() T {
	return o.value
}

// UnmarshalJSON 只要字段出现就标记为已设置；显式 null 置为零值
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, []byte("null")) {
		var zero T
		o.value = zero
		return nil
	}
	return json.Unmarshal(data, &o.value)
}

// MarshalJSON 按内部值序列化
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(o.value)
}
