package interner

import (
	"strconv"
	"strings"
)

// encode* build deterministic cache keys for content-addressed tables
// (type lists, tuple lists, template lists, object/callable shapes). They
// are an implementation detail of the interning tables, not part of the
// public TypeKey surface.

func encodeTypeIds(ids []TypeId) string {
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(strconv.FormatUint(uint64(id), 36))
		b.WriteByte(',')
	}
	return b.String()
}

func encodeTupleElements(elems []TupleElement) string {
	var b strings.Builder
	for _, e := range elems {
		b.WriteString(strconv.FormatUint(uint64(e.Type), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(e.Name), 36))
		if e.Optional {
			b.WriteByte('?')
		}
		if e.Rest {
			b.WriteByte('*')
		}
		b.WriteByte(',')
	}
	return b.String()
}

func encodeTemplateSpans(spans []TemplateSpan) string {
	var b strings.Builder
	for _, s := range spans {
		if s.IsType {
			b.WriteByte('T')
			b.WriteString(strconv.FormatUint(uint64(s.Type), 36))
		} else {
			b.WriteByte('S')
			b.WriteString(strconv.Quote(s.Text))
		}
		b.WriteByte(',')
	}
	return b.String()
}

func encodeProperties(props []Property) string {
	var b strings.Builder
	for _, p := range props {
		b.WriteString(strconv.FormatUint(uint64(p.Name), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.ReadType), 36))
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(p.WriteType), 36))
		if p.Optional {
			b.WriteByte('?')
		}
		if p.Readonly {
			b.WriteByte('r')
		}
		if p.Method {
			b.WriteByte('m')
		}
		b.WriteString(strconv.Itoa(int(p.Visibility)))
		b.WriteByte(',')
	}
	return b.String()
}

func encodeIndexSig(idx *IndexSignature) string {
	if idx == nil {
		return "-"
	}
	s := strconv.FormatUint(uint64(idx.ValueType), 36)
	if idx.Readonly {
		s += "r"
	}
	return s
}

func encodeParams(params []Param) string {
	var b strings.Builder
	for _, p := range params {
		b.WriteString(strconv.FormatUint(uint64(p.Name), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(p.Type), 36))
		if p.Optional {
			b.WriteByte('?')
		}
		if p.Rest {
			b.WriteByte('*')
		}
		b.WriteByte(',')
	}
	return b.String()
}

func encodeTypeParams(tps []TypeParamInfo) string {
	var b strings.Builder
	for _, tp := range tps {
		b.WriteString(strconv.FormatUint(uint64(tp.Name), 36))
		b.WriteByte(':')
		b.WriteString(strconv.FormatUint(uint64(tp.Constraint), 36))
		b.WriteByte('/')
		b.WriteString(strconv.FormatUint(uint64(tp.Default), 36))
		b.WriteByte(',')
	}
	return b.String()
}

func encodeCallSignature(sig CallSignature) string {
	var b strings.Builder
	b.WriteString(encodeTypeParams(sig.TypeParams))
	b.WriteByte('|')
	b.WriteString(encodeParams(sig.Params))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(sig.ThisType), 36))
	b.WriteByte('|')
	b.WriteString(strconv.FormatUint(uint64(sig.ReturnType), 36))
	b.WriteByte('|')
	if sig.Predicate != nil {
		b.WriteString(strconv.FormatUint(uint64(sig.Predicate.Type), 36))
		b.WriteString(sig.Predicate.ParamName)
	}
	if sig.IsMethod {
		b.WriteByte('m')
	}
	return b.String()
}

func encodeCallSignatures(sigs []CallSignature) string {
	var b strings.Builder
	for _, s := range sigs {
		b.WriteString(encodeCallSignature(s))
		b.WriteByte(';')
	}
	return b.String()
}
