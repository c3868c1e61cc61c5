package ws

import "github.com/qs3c/blog_web_server/internal/pkg/pubsub"

// Relay 把 redis 上的事件转发给浏览器：刷新事件广播，导入结果只发给发起人
func (h *Hub) Relay() pubsub.Handlers {
	return pubsub.Handlers{
		OnRefresh: func(m *pubsub.RefreshMessage) {
			if err := h.Broadcast(&Message{Type: TypeRefresh, Data: m}); err != nil {
				h.logger.Warn("relay refresh failed", "resource", m.Resource, "error", err)
			}
		},
		OnImportResult: func(m *pubsub.ImportResultMessage) {
			if err := h.SendToUser(m.UserID, &Message{Type: TypeImportResult, Data: m}); err != nil {
				h.logger.Warn("relay import result failed", "user_id", m.UserID, "error", err)
			}
		},
	}
}
