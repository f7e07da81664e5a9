package main

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/returnukhti/resi_backend/config"
	"github.com/returnukhti/resi_backend/models"
	"github.com/returnukhti/resi_backend/utils"
	"github.com/sirupsen/logrus"
)

func userIdFromRequest(c *gin.Context) (int, bool) {
	userId, ok := utils.GetUserIdFromContext(c.Request.Context())
	if !ok || userId == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return 0, false
	}
	return userId, true
}

// readUploadedFile reads the multipart "file" field fully into memory;
// the parsers work on raw text/bytes, never on the filesystem.
func readUploadedFile(c *gin.Context) ([]byte, bool) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return nil, false
	}
	f, err := fileHeader.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
		return nil, false
	}
	defer f.Close()
	body, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read uploaded file"})
		return nil, false
	}
	return body, true
}

func getResiListHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		filter := models.ResiFilter{
			Search:    c.Query("search"),
			JasaKirim: c.Query("jasa_kirim"),
			Status:    c.Query("status"),
			Sumber:    c.Query("sumber"),
			Tanggal:   c.Query("tanggal"),
			Start:     c.Query("start"),
			End:       c.Query("end"),
		}

		data, err := models.ListResi(c.Request.Context(), userId, &filter)
		if err != nil {
			respondError(c, "getResiListHandler", err)
			return
		}
		c.JSON(http.StatusOK, data)
	}
}

func addResiHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		var input models.NewResi
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nomor resi is required"})
			return
		}

		data, err := models.CreateResi(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, "addResiHandler", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "resi stored",
			"data":    data,
		})
	}
}

func addResiScanHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		var input models.NewResiScan
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "nomor resi is required"})
			return
		}

		data, err := models.CreateResiScan(c.Request.Context(), userId, &input)
		if err != nil {
			respondError(c, "addResiScanHandler", err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{
			"message": "scanned resi stored",
			"data":    data,
		})
	}
}

func detectCourierHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := userIdFromRequest(c); !ok {
			return
		}

		nomor := utils.NormalizeResi(c.Query("resi"))
		if nomor == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "resi query param is required"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"nomor_resi": nomor,
			"jasa_kirim": utils.DetectCourier(nomor),
		})
	}
}

// marketplaceLabel reads the multipart "marketplace" field, defaulting to
// shopee. Labels are stored lowercased so matching is label-exact.
func marketplaceLabel(c *gin.Context) string {
	mp := strings.TrimSpace(c.PostForm("marketplace"))
	if mp == "" {
		mp = "shopee"
	}
	return strings.ToLower(mp)
}

func importResiScanCsvHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}
		body, ok := readUploadedFile(c)
		if !ok {
			return
		}

		rows := models.ParseScanRows(string(body))
		summary, err := models.ImportResiRows(c.Request.Context(), userId, rows, models.SumberScan)
		if err != nil {
			respondError(c, "importResiScanCsvHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":  "scan import finished",
			"inserted": summary.Inserted,
			"skipped":  summary.Skipped,
		})
	}
}

func importMarketplaceCsvHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}
		body, ok := readUploadedFile(c)
		if !ok {
			return
		}

		mp := marketplaceLabel(c)

		rows := models.ParseMarketplaceRows(string(body))
		summary, err := models.ImportResiRows(c.Request.Context(), userId, rows, mp)
		if err != nil {
			respondError(c, "importMarketplaceCsvHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "marketplace import finished",
			"marketplace": mp,
			"inserted":    summary.Inserted,
			"skipped":     summary.Skipped,
		})
	}
}

func importMarketplaceXlsxHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		fileHeader, err := c.FormFile("file")
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
			return
		}
		f, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "could not open uploaded file"})
			return
		}
		defer f.Close()

		mp := marketplaceLabel(c)

		rows, err := models.ParseMarketplaceXlsxRows(f)
		if err != nil {
			respondError(c, "importMarketplaceXlsxHandler", err)
			return
		}

		summary, err := models.ImportResiRows(c.Request.Context(), userId, rows, mp)
		if err != nil {
			respondError(c, "importMarketplaceXlsxHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":     "marketplace xlsx import finished",
			"marketplace": mp,
			"inserted":    summary.Inserted,
			"skipped":     summary.Skipped,
		})
	}
}

type pasteImportRequest struct {
	Marketplace string `json:"marketplace"`
	Text        string `json:"text"`
}

func importMarketplacePasteHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		var req pasteImportRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		summary, err := models.ImportMarketplacePaste(c.Request.Context(), userId, req.Marketplace, req.Text)
		if err != nil {
			respondError(c, "importMarketplacePasteHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":      "marketplace paste import finished",
			"marketplace":  summary.Marketplace,
			"nama_toko":    summary.NamaToko,
			"total_resi":   summary.TotalResi,
			"total_barang": summary.TotalBarang,
			"inserted":     summary.Inserted,
			"skipped":      summary.Skipped,
		})
	}
}

type matchRequest struct {
	Marketplace string `json:"marketplace"`
}

func matchResiHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		var req matchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		// Best-effort lock per owner. Matching is idempotent either way
		// (the status transition is conditional); the lock just avoids
		// wasted duplicate work when two runs land together.
		logger := config.GetLogger()
		if redisLock := config.GetRedisLock(); redisLock != nil {
			lock, err := redisLock.Obtain(c.Request.Context(), fmt.Sprintf("lock:match:%d", userId), 30*time.Second, nil)
			if err != nil {
				logger.WithFields(logrus.Fields{
					"field":   "matchResiHandler",
					"user_id": userId,
				}).Warn("could not obtain match lock; proceeding without it: " + err.Error())
			} else {
				defer func() {
					if releaseErr := lock.Release(c.Request.Context()); releaseErr != nil {
						logger.WithFields(logrus.Fields{
							"field":   "matchResiHandler",
							"user_id": userId,
						}).Warn("failed to release match lock: " + releaseErr.Error())
					}
				}()
			}
		}

		result, err := models.MatchResi(c.Request.Context(), userId, req.Marketplace)
		if err != nil {
			respondError(c, "matchResiHandler", err)
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"message":               "matching finished (by nomor resi only)",
			"marketplace":           result.Marketplace,
			"total_scan":            result.TotalScan,
			"total_marketplace":     result.TotalMarketplace,
			"matched":               result.Matched,
			"unmatched_scan":        result.UnmatchedScan,
			"marketplace_unmatched": result.MarketplaceUnmatched,
		})
	}
}

func editResiHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		var input models.EditResi
		if err := c.ShouldBindJSON(&input); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		data, err := models.UpdateResi(c.Request.Context(), userId, id, &input)
		if err != nil {
			respondError(c, "editResiHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "resi updated",
			"data":    data,
		})
	}
}

func removeResiHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		id, err := strconv.Atoi(c.Param("id"))
		if err != nil || id <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
			return
		}

		if err := models.DeleteResi(c.Request.Context(), userId, id); err != nil {
			respondError(c, "removeResiHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "resi deleted"})
	}
}

type deleteSelectedRequest struct {
	Ids []int `json:"ids"`
}

func deleteSelectedResiHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		userId, ok := userIdFromRequest(c)
		if !ok {
			return
		}

		var req deleteSelectedRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}

		deleted, err := models.DeleteSelectedResi(c.Request.Context(), userId, req.Ids)
		if err != nil {
			respondError(c, "deleteSelectedResiHandler", err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message": "selected resi deleted",
			"deleted": deleted,
		})
	}
}
