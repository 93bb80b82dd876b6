package dnsmsg

import (
	"encoding/binary"
	"errors"
)

var errTruncated = errors.New("dnsmsg: message truncated")

// Question is a single entry of a message's question section.
type Question struct {
	Name  string
	Type  Type
	Class Class
}

// ResourceHeader is the fixed portion of a resource record preceding
// its RData.
type ResourceHeader struct {
	Name  string
	Type  Type
	Class Class
	TTL   uint32
}

// Resource is a fully decoded resource record.
type Resource struct {
	ResourceHeader
	RData RData
}

// Message is a decoded DNS message: header, questions, and answers.
// Authority and additional sections are parsed-and-skipped: their
// bytes are walked (to keep offset accounting correct) but never
// retained, per the core's scope cut.
type Message struct {
	ID       uint16
	Flags    HeaderFlags
	Question []Question
	Answer   []Resource
}

// Decode parses buf into a Message. On malformed input Decode returns
// the best-effort partial message decoded so far alongside a non-nil
// error; callers apply their own default verdict rather than treating
// this as fatal.
func Decode(buf []byte) (Message, error) {
	var msg Message
	hdr, ok := NewHeaderFrame(buf)
	if !ok {
		return msg, errTruncated
	}
	msg.ID = hdr.ID()
	msg.Flags = hdr.Flags()

	off := SizeHeader
	qd := hdr.QDCount()
	msg.Question = make([]Question, 0, qd)
	for i := 0; i < int(qd); i++ {
		name, next, err := decodeName(buf, off)
		if err != nil {
			return msg, err
		}
		off = next
		if off+4 > len(buf) {
			return msg, errTruncated
		}
		q := Question{
			Name:  name,
			Type:  Type(binary.BigEndian.Uint16(buf[off : off+2])),
			Class: Class(binary.BigEndian.Uint16(buf[off+2 : off+4])),
		}
		off += 4
		msg.Question = append(msg.Question, q)
	}

	an := hdr.ANCount()
	msg.Answer = make([]Resource, 0, an)
	for i := 0; i < int(an); i++ {
		r, next, err := decodeResource(buf, off)
		if err != nil {
			return msg, err
		}
		off = next
		msg.Answer = append(msg.Answer, r)
	}

	// Authority and additional sections are walked to keep downstream
	// offset math honest, but their records are discarded.
	off, err := skipResources(buf, off, hdr.NSCount())
	if err != nil {
		return msg, err
	}
	if _, err := skipResources(buf, off, hdr.ARCount()); err != nil {
		return msg, err
	}
	return msg, nil
}

func decodeResource(buf []byte, off int) (Resource, int, error) {
	var r Resource
	name, next, err := decodeName(buf, off)
	if err != nil {
		return r, off, err
	}
	off = next
	if off+10 > len(buf) {
		return r, off, errTruncated
	}
	r.Name = name
	r.Type = Type(binary.BigEndian.Uint16(buf[off : off+2]))
	r.Class = Class(binary.BigEndian.Uint16(buf[off+2 : off+4]))
	r.TTL = binary.BigEndian.Uint32(buf[off+4 : off+8])
	rdlength := int(binary.BigEndian.Uint16(buf[off+8 : off+10]))
	rdataOff := off + 10
	if rdataOff+rdlength > len(buf) {
		return r, off, errTruncated
	}
	rdata, err := decodeRData(buf, rdataOff, buf[rdataOff:rdataOff+rdlength], r.Type)
	if err != nil {
		return r, off, err
	}
	r.RData = rdata
	return r, rdataOff + rdlength, nil
}

func skipResources(buf []byte, off int, count uint16) (int, error) {
	for i := 0; i < int(count); i++ {
		_, next, err := decodeResource(buf, off)
		if err != nil {
			return off, err
		}
		off = next
	}
	return off, nil
}
