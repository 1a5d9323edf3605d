package models

import (
	"context"
	"errors"
	"time"

	"bitbucket.org/mmdatafocus/altavista_backend/config"
	"bitbucket.org/mmdatafocus/altavista_backend/utils"
	"gorm.io/gorm"
)

// Folder organizes documents in a tree. ParentId nil means root.
type Folder struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	Name       string    `gorm:"size:100;not null" json:"name" binding:"required"`
	ParentId   *int      `gorm:"index" json:"parent_id"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Folder) GetPropertyId() string {
	return obj.PropertyId
}

type NewFolder struct {
	Name     string `json:"name" binding:"required"`
	ParentId *int   `json:"parent_id"`
}

func CreateFolder(ctx context.Context, input *NewFolder) (*Folder, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.ParentId != nil {
		if err := utils.ValidateResourceId[Folder](ctx, propertyId, *input.ParentId); err != nil {
			return nil, errors.New("parent folder not found")
		}
	}

	// sibling names are unique
	var count int64
	var err error
	if input.ParentId == nil {
		count, err = utils.ResourceCountWhere[Folder](ctx, propertyId,
			"name = ? AND parent_id IS NULL", input.Name)
	} else {
		count, err = utils.ResourceCountWhere[Folder](ctx, propertyId,
			"name = ? AND parent_id = ?", input.Name, *input.ParentId)
	}
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("duplicate folder name")
	}

	folder := Folder{
		PropertyId: propertyId,
		Name:       input.Name,
		ParentId:   input.ParentId,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&folder).Error; err != nil {
		return nil, err
	}
	return &folder, nil
}

// MoveFolder re-parents a folder, refusing moves into its own subtree.
func MoveFolder(ctx context.Context, id int, newParentId *int) (*Folder, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	folder, err := utils.FetchModel[Folder](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if newParentId != nil {
		if *newParentId == id {
			return nil, errors.New("folder cannot be its own parent")
		}
		parent, err := utils.FetchModel[Folder](ctx, propertyId, *newParentId)
		if err != nil {
			return nil, errors.New("parent folder not found")
		}
		// walk up from the new parent; hitting the moved folder means a cycle
		seen := map[int]bool{id: true}
		for parent.ParentId != nil {
			if seen[*parent.ParentId] {
				return nil, errors.New("move would create a cycle")
			}
			seen[parent.ID] = true
			parent, err = utils.FetchModel[Folder](ctx, propertyId, *parent.ParentId)
			if err != nil {
				break
			}
		}
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Model(folder).Update("ParentId", newParentId).Error; err != nil {
		return nil, err
	}
	folder.ParentId = newParentId
	return folder, nil
}

// FolderPath builds the slash-separated path from the root, cycle-safe.
func FolderPath(ctx context.Context, id int) (string, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return "", errors.New("property id is required")
	}
	folder, err := utils.FetchModel[Folder](ctx, propertyId, id)
	if err != nil {
		return "", err
	}

	path := folder.Name
	seen := map[int]bool{folder.ID: true}
	for folder.ParentId != nil {
		if seen[*folder.ParentId] {
			break
		}
		folder, err = utils.FetchModel[Folder](ctx, propertyId, *folder.ParentId)
		if err != nil {
			break
		}
		seen[folder.ID] = true
		path = folder.Name + "/" + path
	}
	return "/" + path, nil
}

func DeleteFolder(ctx context.Context, id int) (*Folder, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	folder, err := utils.FetchModel[Folder](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	count, err := utils.ResourceCountWhere[Folder](ctx, propertyId, "parent_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("folder has subfolders")
	}
	count, err = utils.ResourceCountWhere[Document](ctx, propertyId, "folder_id = ?", id)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, errors.New("folder has documents")
	}

	db := config.GetDB()
	if err := db.WithContext(ctx).Delete(folder).Error; err != nil {
		return nil, err
	}
	return folder, nil
}

// ListFolders returns children of a folder (nil for roots).
func ListFolders(ctx context.Context, parentId *int) ([]*Folder, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)
	if parentId == nil {
		dbCtx.Where("parent_id IS NULL")
	} else {
		dbCtx.Where("parent_id = ?", *parentId)
	}
	var results []*Folder
	if err := dbCtx.Order("name").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// Document is file metadata only; the bytes live elsewhere and
// StorageKey points at them.
type Document struct {
	ID          int                `gorm:"primary_key" json:"id"`
	PropertyId  string             `gorm:"index;not null" json:"property_id"`
	FolderId    *int               `gorm:"index" json:"folder_id"`
	Title       string             `gorm:"size:255;not null" json:"title" binding:"required"`
	Type        DocumentType       `gorm:"type:enum('acta','reglamento','circular','contrato','informe','otro');default:'otro'" json:"type"`
	Visibility  DocumentVisibility `gorm:"type:enum('publica','privada');default:'privada'" json:"visibility"`
	StorageKey  string             `gorm:"size:500;not null" json:"storage_key" binding:"required"`
	ContentType string             `gorm:"size:100" json:"content_type"`
	SizeBytes   int64              `gorm:"default:0" json:"size_bytes"`
	UploadedBy  string             `gorm:"size:100" json:"uploaded_by"`
	ViewCount   int                `gorm:"default:0" json:"view_count"`
	CreatedAt   time.Time          `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time          `gorm:"autoUpdateTime" json:"updated_at"`
}

func (obj Document) GetPropertyId() string {
	return obj.PropertyId
}

func (obj Document) GetId() int {
	return obj.ID
}

func (obj Document) GetCursor() string {
	return obj.Title
}

type DocumentsEdge Edge[Document]

type DocumentsConnection struct {
	PageInfo *PageInfo        `json:"pageInfo"`
	Edges    []*DocumentsEdge `json:"edges"`
}

type NewDocument struct {
	FolderId    *int               `json:"folder_id"`
	Title       string             `json:"title" binding:"required"`
	Type        DocumentType       `json:"type"`
	Visibility  DocumentVisibility `json:"visibility"`
	StorageKey  string             `json:"storage_key" binding:"required"`
	ContentType string             `json:"content_type"`
	SizeBytes   int64              `json:"size_bytes"`
}

// DocumentView records one read, for per-document counters.
type DocumentView struct {
	ID         int       `gorm:"primary_key" json:"id"`
	PropertyId string    `gorm:"index;not null" json:"property_id"`
	DocumentId int       `gorm:"index;not null" json:"document_id"`
	ViewedBy   string    `gorm:"size:100" json:"viewed_by"`
	ViewedAt   time.Time `gorm:"autoCreateTime" json:"viewed_at"`
}

func (obj DocumentView) GetPropertyId() string {
	return obj.PropertyId
}

func CreateDocument(ctx context.Context, input *NewDocument) (*Document, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	if input.FolderId != nil {
		if err := utils.ValidateResourceId[Folder](ctx, propertyId, *input.FolderId); err != nil {
			return nil, errors.New("folder not found")
		}
	}
	docType := input.Type
	if docType == "" {
		docType = DocumentTypeOther
	}
	if !docType.IsValid() {
		return nil, errors.New("invalid document type")
	}
	visibility := input.Visibility
	if visibility == "" {
		visibility = DocumentVisibilityPrivate
	}

	uploadedBy, _ := utils.GetUsernameFromContext(ctx)
	document := Document{
		PropertyId:  propertyId,
		FolderId:    input.FolderId,
		Title:       input.Title,
		Type:        docType,
		Visibility:  visibility,
		StorageKey:  input.StorageKey,
		ContentType: input.ContentType,
		SizeBytes:   input.SizeBytes,
		UploadedBy:  uploadedBy,
	}
	db := config.GetDB()
	if err := db.WithContext(ctx).Create(&document).Error; err != nil {
		return nil, err
	}
	return &document, nil
}

func UpdateDocument(ctx context.Context, id int, input *NewDocument) (*Document, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	document, err := utils.FetchModel[Document](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	if input.FolderId != nil {
		if err := utils.ValidateResourceId[Folder](ctx, propertyId, *input.FolderId); err != nil {
			return nil, errors.New("folder not found")
		}
	}

	db := config.GetDB()
	err = db.WithContext(ctx).Model(document).Updates(map[string]interface{}{
		"FolderId":   input.FolderId,
		"Title":      input.Title,
		"Type":       input.Type,
		"Visibility": input.Visibility,
	}).Error
	if err != nil {
		return nil, err
	}
	return utils.FetchModel[Document](ctx, propertyId, id)
}

func DeleteDocument(ctx context.Context, id int) (*Document, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	document, err := utils.FetchModel[Document](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}
	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Where("document_id = ?", id).Delete(&DocumentView{}).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.WithContext(ctx).Delete(document).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	return document, nil
}

// RecordDocumentView logs a read and bumps the counter atomically.
func RecordDocumentView(ctx context.Context, id int) (*Document, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	document, err := utils.FetchModel[Document](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	viewedBy, _ := utils.GetUsernameFromContext(ctx)
	view := DocumentView{
		PropertyId: propertyId,
		DocumentId: id,
		ViewedBy:   viewedBy,
	}

	db := config.GetDB()
	tx := db.Begin()
	if err := tx.WithContext(ctx).Create(&view).Error; err != nil {
		tx.Rollback()
		return nil, err
	}
	err = tx.WithContext(ctx).Model(document).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	if err := tx.Commit().Error; err != nil {
		return nil, err
	}
	document.ViewCount++
	return document, nil
}

func ListDocuments(ctx context.Context, folderId *int, docType *DocumentType) ([]*Document, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)
	if folderId != nil {
		dbCtx.Where("folder_id = ?", *folderId)
	}
	if docType != nil && *docType != "" {
		dbCtx.Where("type = ?", *docType)
	}
	var results []*Document
	if err := dbCtx.Order("title").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func PaginateDocument(ctx context.Context, limit *int, after *string,
	folderId *int, docType *DocumentType) (*DocumentsConnection, error) {

	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	db := config.GetDB()
	dbCtx := db.WithContext(ctx).Where("property_id = ?", propertyId)

	if folderId != nil {
		dbCtx.Where("folder_id = ?", *folderId)
	}
	if docType != nil && *docType != "" {
		dbCtx.Where("type = ?", *docType)
	}

	edges, pageInfo, err := FetchPageCompositeCursor[Document](dbCtx, *limit, after, "title", ">")
	if err != nil {
		return nil, err
	}
	var connection DocumentsConnection
	connection.PageInfo = pageInfo
	for _, edge := range edges {
		documentsEdge := DocumentsEdge(edge)
		connection.Edges = append(connection.Edges, &documentsEdge)
	}

	return &connection, err
}

// DocumentViewStats is the per-document read summary.
type DocumentViewStats struct {
	DocumentId   int             `json:"document_id"`
	ViewCount    int             `json:"view_count"`
	LastViewedAt *time.Time      `json:"last_viewed_at"`
	RecentViews  []*DocumentView `json:"recent_views"`
}

// GetDocumentViewStats returns the view counter plus the most recent reads.
func GetDocumentViewStats(ctx context.Context, id int) (*DocumentViewStats, error) {
	propertyId, ok := utils.GetPropertyIdFromContext(ctx)
	if !ok || propertyId == "" {
		return nil, errors.New("property id is required")
	}
	document, err := utils.FetchModel[Document](ctx, propertyId, id)
	if err != nil {
		return nil, err
	}

	db := config.GetDB()
	var views []*DocumentView
	err = db.WithContext(ctx).
		Where("property_id = ? AND document_id = ?", propertyId, id).
		Order("viewed_at DESC").
		Limit(20).
		Find(&views).Error
	if err != nil {
		return nil, err
	}

	stats := DocumentViewStats{
		DocumentId:  id,
		ViewCount:   document.ViewCount,
		RecentViews: views,
	}
	if len(views) > 0 {
		stats.LastViewedAt = &views[0].ViewedAt
	}
	return &stats, nil
}
