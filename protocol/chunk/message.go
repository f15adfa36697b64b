package chunk

import (
	"encoding/binary"
	"fmt"
)

// ChunkMessageType identifies chunk messages in the common header.
const ChunkMessageType = 2

// Field sizes of the serialized chunk header, in bytes.
const (
	HeaderLengthSize = 2
	TotalLengthSize  = 4
	MsgTypeIDSize    = 1
	RunIDSize        = 36
	DatasetSize      = 1
	StageSize        = 1
	ChunkNumberSize  = 8
	IsLastChunkSize  = 1
	LineCountSize    = 8
)

const headerLength = HeaderLengthSize + TotalLengthSize + MsgTypeIDSize +
	RunIDSize + DatasetSize + StageSize + ChunkNumberSize + IsLastChunkSize + LineCountSize

// Serialize encodes the chunk with the fixed binary header followed by the
// raw payload.
func Serialize(c *Chunk) ([]byte, error) {
	if len(c.RunID) != RunIDSize {
		return nil, fmt.Errorf("run_id must be %d bytes, got %d", RunIDSize, len(c.RunID))
	}

	totalLength := headerLength + len(c.Data)
	buf := make([]byte, totalLength)
	offset := 0

	binary.BigEndian.PutUint16(buf[offset:], uint16(headerLength))
	offset += HeaderLengthSize

	binary.BigEndian.PutUint32(buf[offset:], uint32(totalLength))
	offset += TotalLengthSize

	buf[offset] = ChunkMessageType
	offset += MsgTypeIDSize

	copy(buf[offset:], c.RunID)
	offset += RunIDSize

	buf[offset] = c.Dataset
	offset += DatasetSize

	buf[offset] = c.Stage
	offset += StageSize

	binary.BigEndian.PutUint64(buf[offset:], uint64(c.ChunkNumber))
	offset += ChunkNumberSize

	if c.IsLastChunk {
		buf[offset] = 1
	}
	offset += IsLastChunkSize

	binary.BigEndian.PutUint64(buf[offset:], uint64(c.LineCount))
	offset += LineCountSize

	copy(buf[offset:], c.Data)
	return buf, nil
}

// Deserialize decodes a serialized chunk message.
func Deserialize(data []byte) (*Chunk, error) {
	if len(data) < headerLength {
		return nil, fmt.Errorf("chunk message too short: %d bytes, want at least %d", len(data), headerLength)
	}

	offset := 0
	declaredHeader := int(binary.BigEndian.Uint16(data[offset:]))
	offset += HeaderLengthSize
	if declaredHeader != headerLength {
		return nil, fmt.Errorf("unexpected header length %d, want %d", declaredHeader, headerLength)
	}

	totalLength := int(binary.BigEndian.Uint32(data[offset:]))
	offset += TotalLengthSize
	if totalLength != len(data) {
		return nil, fmt.Errorf("declared length %d does not match message size %d", totalLength, len(data))
	}

	if data[offset] != ChunkMessageType {
		return nil, fmt.Errorf("unexpected message type %d", data[offset])
	}
	offset += MsgTypeIDSize

	c := &Chunk{}
	c.RunID = string(data[offset : offset+RunIDSize])
	offset += RunIDSize

	c.Dataset = data[offset]
	offset += DatasetSize

	c.Stage = data[offset]
	offset += StageSize

	c.ChunkNumber = int(binary.BigEndian.Uint64(data[offset:]))
	offset += ChunkNumberSize

	c.IsLastChunk = data[offset] == 1
	offset += IsLastChunkSize

	c.LineCount = int(binary.BigEndian.Uint64(data[offset:]))
	offset += LineCountSize

	c.Data = string(data[offset:])
	return c, nil
}
