package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/dgallion1/wordjson/internal/pathstore"
)

// listLimit caps a single prefix scan of file records.
const listLimit = 10000

// PathstoreStore keeps file records as nodes under <prefix>/files/<file_id>
// in a pathstore KV server.
type PathstoreStore struct {
	client *pathstore.Client
	prefix string
	log    *slog.Logger
}

func NewPathstoreStore(client *pathstore.Client, prefix string, log *slog.Logger) *PathstoreStore {
	log.Info("opened file store", "backend", "pathstore", "prefix", prefix)
	return &PathstoreStore{
		client: client,
		prefix: strings.TrimSuffix(prefix, "/"),
		log:    log,
	}
}

func (s *PathstoreStore) filesKey() string {
	return s.prefix + "/files"
}

func (s *PathstoreStore) key(fileID string) string {
	return s.filesKey() + "/" + fileID
}

func (s *PathstoreStore) Insert(ctx context.Context, f File) error {
	err := s.client.PutNode(ctx, s.key(f.FileID), pathstore.NodeRequest{
		Value:  f,
		Source: "wordjson:" + f.FileID,
	})
	if err != nil {
		return fmt.Errorf("insert file %s: %w", f.FileID, err)
	}
	return nil
}

func (s *PathstoreStore) Get(ctx context.Context, fileID string) (*File, error) {
	node, err := s.client.GetNode(ctx, s.key(fileID))
	if err != nil {
		return nil, fmt.Errorf("get file %s: %w", fileID, err)
	}
	if node == nil {
		return nil, nil
	}
	var f File
	if err := json.Unmarshal(node.Value, &f); err != nil {
		return nil, fmt.Errorf("decode file %s: %w", fileID, err)
	}
	return &f, nil
}

func (s *PathstoreStore) List(ctx context.Context) ([]File, error) {
	nodes, err := s.client.ListChildren(ctx, s.filesKey(), listLimit)
	if err != nil {
		return nil, fmt.Errorf("list files: %w", err)
	}
	files := make([]File, 0, len(nodes))
	for _, n := range nodes {
		var f File
		if err := json.Unmarshal(n.Value, &f); err != nil || f.FileID == "" {
			s.log.Warn("skipping unreadable file record", "key", n.Key, "error", err)
			continue
		}
		files = append(files, f)
	}
	sort.SliceStable(files, func(i, j int) bool {
		if files[i].UploadDate != files[j].UploadDate {
			return files[i].UploadDate < files[j].UploadDate
		}
		return files[i].FileID < files[j].FileID
	})
	return files, nil
}

func (s *PathstoreStore) Delete(ctx context.Context, fileID string) (bool, error) {
	ok, err := s.client.DeleteNode(ctx, s.key(fileID))
	if err != nil {
		return false, fmt.Errorf("delete file %s: %w", fileID, err)
	}
	return ok, nil
}

func (s *PathstoreStore) Close() error {
	s.client.Close()
	return nil
}
