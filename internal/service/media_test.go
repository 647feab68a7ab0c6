package service

import (
	"context"
	"encoding/json"
	"testing"
)

func TestHandleCleanupMessage(t *testing.T) {
	ctx := context.Background()

	t.Run("坏消息直接丢弃", func(t *testing.T) {
		outcome, err := HandleCleanupMessage(ctx, newMemStore(), []byte("not json"))
		if outcome != CleanupDiscard || err == nil {
			t.Fatalf("期望Discard, 实际 %v %v", outcome, err)
		}
	})

	t.Run("全部删除", func(t *testing.T) {
		store := newMemStore()
		store.objects["videos/a.mp4"] = []byte("a")
		store.objects["thumbnails/a.jpg"] = []byte("b")
		body, _ := json.Marshal(MediaCleanupMessage{Keys: []string{"videos/a.mp4", "", "thumbnails/a.jpg"}, Reason: ReasonVideoDeleted})

		outcome, err := HandleCleanupMessage(ctx, store, body)
		if outcome != CleanupDone || err != nil {
			t.Fatalf("期望Done, 实际 %v %v", outcome, err)
		}
		if len(store.objects) != 0 || len(store.deleted) != 2 {
			t.Fatalf("文件没删干净: objects=%v deleted=%v", store.objects, store.deleted)
		}
	})

	t.Run("存储出错重新入队", func(t *testing.T) {
		store := newMemStore()
		store.failPrefix = "videos/"
		body, _ := json.Marshal(MediaCleanupMessage{Keys: []string{"videos/a.mp4"}})

		outcome, err := HandleCleanupMessage(ctx, store, body)
		if outcome != CleanupRetry || err == nil {
			t.Fatalf("期望Retry, 实际 %v %v", outcome, err)
		}
	})
}
