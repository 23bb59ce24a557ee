package lsp

import (
	"context"
	"encoding/json"
	"fmt"

	"go.lsp.dev/protocol"

	"ecb/internal/complete"
)

// completionKinds maps engine candidate kinds onto LSP item kinds.
var completionKinds = map[complete.Kind]protocol.CompletionItemKind{
	complete.KindValue:  protocol.CompletionItemKindFunction,
	complete.KindType:   protocol.CompletionItemKindClass,
	complete.KindModule: protocol.CompletionItemKindModule,
}

func (s *Server) handleCompletion(msg *Message) *Message {
	var params protocol.CompletionParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, fmt.Sprintf("invalid completion params: %v", err), nil)
	}

	path := params.TextDocument.URI.Filename()
	text, err := s.overlay.ReadText(path)
	if err != nil {
		s.logger.Debug("completion against unreadable document",
			"path", path,
			"error", err.Error(),
		)
		return NewResultMessage(msg.Id, protocol.CompletionList{Items: []protocol.CompletionItem{}})
	}

	offset := OffsetForPosition(text, int(params.Position.Line), int(params.Position.Character))
	candidates := s.engine.Provide(context.Background(), path, offset)

	items := make([]protocol.CompletionItem, 0, len(candidates))
	for _, c := range candidates {
		items = append(items, protocol.CompletionItem{
			Label: c.Label,
			Kind:  completionKinds[c.Kind],
			Data:  c,
		})
	}

	return NewResultMessage(msg.Id, protocol.CompletionList{
		IsIncomplete: false,
		Items:        items,
	})
}

// handleCompletionResolve fills in detail and documentation for the candidate
// that was stashed in the item's data field during the provide phase.
func (s *Server) handleCompletionResolve(msg *Message) *Message {
	var item protocol.CompletionItem
	if err := json.Unmarshal(msg.Params, &item); err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, fmt.Sprintf("invalid resolve params: %v", err), nil)
	}

	candidate, err := candidateFromData(item.Data)
	if err != nil {
		s.logger.Debug("resolve without candidate data",
			"label", item.Label,
			"error", err.Error(),
		)
		return NewResultMessage(msg.Id, item)
	}

	resolved := s.engine.Resolve(context.Background(), candidate)
	item.Detail = resolved.Detail
	if resolved.Documentation != "" {
		item.Documentation = protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: resolved.Documentation,
		}
	}

	return NewResultMessage(msg.Id, item)
}

func (s *Server) handleHover(msg *Message) *Message {
	var params protocol.HoverParams
	if err := json.Unmarshal(msg.Params, &params); err != nil {
		return NewErrorMessage(msg.Id, InvalidParams, fmt.Sprintf("invalid hover params: %v", err), nil)
	}

	path := params.TextDocument.URI.Filename()
	text, err := s.overlay.ReadText(path)
	if err != nil {
		return NewResultMessage(msg.Id, NullResult)
	}

	offset := OffsetForPosition(text, int(params.Position.Line), int(params.Position.Character))
	content := s.engine.Hover(context.Background(), path, offset)
	if content == "" {
		return NewResultMessage(msg.Id, NullResult)
	}

	return NewResultMessage(msg.Id, protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.Markdown,
			Value: content,
		},
	})
}

// candidateFromData rebuilds an engine candidate from an item's data field,
// which arrives as untyped JSON after the round trip through the client.
func candidateFromData(data interface{}) (*complete.Candidate, error) {
	if data == nil {
		return nil, fmt.Errorf("completion item has no data")
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}

	var c complete.Candidate
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return &c, nil
}
