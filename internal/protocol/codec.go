package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/vmihailenco/msgpack/v5"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/known/structpb"
)

// 编码格式
const (
	CodecJSON     = "json"
	CodecMsgpack  = "msgpack"
	CodecProtobuf = "protobuf"
)

// Codec 下行帧编解码器
type Codec interface {
	Name() string
	// Binary 是否为二进制格式，决定WebSocket消息类型
	Binary() bool
	Encode(v interface{}) ([]byte, error)
	Decode(data []byte, v interface{}) error
}

// NewCodec 按名称创建编解码器
func NewCodec(name string) (Codec, error) {
	switch name {
	case "", CodecJSON:
		return jsonCodec{}, nil
	case CodecMsgpack:
		return msgpackCodec{}, nil
	case CodecProtobuf:
		return protobufCodec{}, nil
	default:
		return nil, fmt.Errorf("未知的编码格式: %s", name)
	}
}

type jsonCodec struct{}

func (jsonCodec) Name() string { return CodecJSON }
func (jsonCodec) Binary() bool { return false }

func (jsonCodec) Encode(v interface{}) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("JSON编码失败: %w", err)
	}
	return data, nil
}

func (jsonCodec) Decode(data []byte, v interface{}) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("JSON解码失败: %w", err)
	}
	return nil
}

// msgpackCodec 复用json标签作为字段名
type msgpackCodec struct{}

func (msgpackCodec) Name() string { return CodecMsgpack }
func (msgpackCodec) Binary() bool { return true }

func (msgpackCodec) Encode(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag("json")
	if err := enc.Encode(v); err != nil {
		return nil, fmt.Errorf("msgpack编码失败: %w", err)
	}
	return buf.Bytes(), nil
}

func (msgpackCodec) Decode(data []byte, v interface{}) error {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("msgpack解码失败: %w", err)
	}
	return nil
}

// protobufCodec 以 google.protobuf.Struct 承载帧内容，客户端无需生成代码
type protobufCodec struct{}

func (protobufCodec) Name() string { return CodecProtobuf }
func (protobufCodec) Binary() bool { return true }

func (protobufCodec) Encode(v interface{}) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("protobuf编码失败: %w", err)
	}
	var fields map[string]interface{}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("protobuf编码只支持对象: %w", err)
	}
	st, err := structpb.NewStruct(fields)
	if err != nil {
		return nil, fmt.Errorf("protobuf编码失败: %w", err)
	}
	data, err := proto.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("protobuf编码失败: %w", err)
	}
	return data, nil
}

func (protobufCodec) Decode(data []byte, v interface{}) error {
	var st structpb.Struct
	if err := proto.Unmarshal(data, &st); err != nil {
		return fmt.Errorf("protobuf解码失败: %w", err)
	}
	raw, err := protojson.Marshal(&st)
	if err != nil {
		return fmt.Errorf("protobuf解码失败: %w", err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("protobuf解码失败: %w", err)
	}
	return nil
}
