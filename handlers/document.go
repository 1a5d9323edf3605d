package handlers

import (
	"bitbucket.org/mmdatafocus/altavista_backend/models"
	"github.com/gin-gonic/gin"
)

/* folders */

func CreateFolderHandler(c *gin.Context) {
	var input models.NewFolder
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateFolderHandler", err)
		return
	}
	folder, err := models.CreateFolder(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateFolderHandler", err)
		return
	}
	respondData(c, folder)
}

type moveFolderRequest struct {
	ParentId *int `json:"parent_id"`
}

func MoveFolderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input moveFolderRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "MoveFolderHandler", err)
		return
	}
	folder, err := models.MoveFolder(c.Request.Context(), id, input.ParentId)
	if err != nil {
		respondError(c, "MoveFolderHandler", err)
		return
	}
	respondData(c, folder)
}

func FolderPathHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	path, err := models.FolderPath(c.Request.Context(), id)
	if err != nil {
		respondError(c, "FolderPathHandler", err)
		return
	}
	respondData(c, gin.H{"path": path})
}

func DeleteFolderHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	folder, err := models.DeleteFolder(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteFolderHandler", err)
		return
	}
	respondData(c, folder)
}

func ListFoldersHandler(c *gin.Context) {
	folders, err := models.ListFolders(c.Request.Context(), intQuery(c, "parent_id"))
	if err != nil {
		respondError(c, "ListFoldersHandler", err)
		return
	}
	respondData(c, folders)
}

/* documents */

func CreateDocumentHandler(c *gin.Context) {
	var input models.NewDocument
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "CreateDocumentHandler", err)
		return
	}
	document, err := models.CreateDocument(c.Request.Context(), &input)
	if err != nil {
		respondError(c, "CreateDocumentHandler", err)
		return
	}
	respondData(c, document)
}

func UpdateDocumentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	var input models.NewDocument
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, "UpdateDocumentHandler", err)
		return
	}
	document, err := models.UpdateDocument(c.Request.Context(), id, &input)
	if err != nil {
		respondError(c, "UpdateDocumentHandler", err)
		return
	}
	respondData(c, document)
}

func DeleteDocumentHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	document, err := models.DeleteDocument(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DeleteDocumentHandler", err)
		return
	}
	respondData(c, document)
}

func RecordDocumentViewHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	document, err := models.RecordDocumentView(c.Request.Context(), id)
	if err != nil {
		respondError(c, "RecordDocumentViewHandler", err)
		return
	}
	respondData(c, document)
}

func ListDocumentsHandler(c *gin.Context) {
	var docType *models.DocumentType
	if raw := stringQuery(c, "type"); raw != nil {
		value := models.DocumentType(*raw)
		docType = &value
	}
	documents, err := models.ListDocuments(c.Request.Context(), intQuery(c, "folder_id"), docType)
	if err != nil {
		respondError(c, "ListDocumentsHandler", err)
		return
	}
	respondData(c, documents)
}

func PaginateDocumentsHandler(c *gin.Context) {
	var docType *models.DocumentType
	if raw := stringQuery(c, "type"); raw != nil {
		value := models.DocumentType(*raw)
		docType = &value
	}
	connection, err := models.PaginateDocument(c.Request.Context(),
		limitQuery(c), afterQuery(c), intQuery(c, "folder_id"), docType)
	if err != nil {
		respondError(c, "PaginateDocumentsHandler", err)
		return
	}
	respondData(c, connection)
}

func DocumentViewStatsHandler(c *gin.Context) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	stats, err := models.GetDocumentViewStats(c.Request.Context(), id)
	if err != nil {
		respondError(c, "DocumentViewStatsHandler", err)
		return
	}
	respondData(c, stats)
}
