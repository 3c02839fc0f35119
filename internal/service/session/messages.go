package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/tranvq/shiftlog/internal/domain/shift"
)

// Commands and universal labels.
const (
	cmdStart    = "/start"
	cmdNewShift = "/newshift"
	cmdShifts   = "/shifts"
	cmdCancel   = "/cancel"
	labelExit   = "Thoát"
)

// Menu labels. The transport matches them back as plain text.
const (
	labelPerformerSelf       = "Tôi trực"
	labelPerformerOutsourced = "Thuê người khác"

	labelAnotherEntry = "Nhập ca khác"
	labelUndoSave     = "Hoàn tác"
	labelDone         = "Kết thúc"

	labelEdit   = "Sửa"
	labelDelete = "Xoá"
	labelBack   = "Quay lại"

	labelFieldDate      = "Ngày"
	labelFieldVenue     = "Địa điểm"
	labelFieldEvent     = "Loại sự kiện"
	labelFieldPerformer = "Người trực"
	labelFieldActualEnd = "Giờ kết thúc"
	labelFieldWorkerPay = "Tiền thuê"

	labelConfirm       = "Xác nhận"
	labelDecline       = "Huỷ"
	labelDeleteStep1   = "Xoá"
	labelDeleteForever = "Xoá vĩnh viễn"
	labelKeep          = "Không"
)

// User-facing copy.
const (
	msgIdleHint  = "Gõ /newshift để tạo log mới, /shifts để xem các ca gần đây."
	msgCancelled = "Đã huỷ, cần nhập lại thì gõ /newshift nhé."

	msgAskDate      = "Nhập ngày sự kiện (định dạng YYYY-MM-DD):"
	msgBadDate      = "Ngày không hợp lệ. Ví dụ hợp lệ: 2024-05-30"
	msgAskVenue     = "Nhập tên quán/địa điểm:"
	msgBadVenue     = "Tên địa điểm không được để trống."
	msgAskEvent     = "Chọn loại sự kiện:"
	msgBadEvent     = "Loại sự kiện không hợp lệ, thử lại nhé."
	msgAskPerformer = "Ai trực sự kiện này?"
	msgBadPerformer = "Vui lòng chọn 'Tôi trực' hoặc 'Thuê người khác'."
	msgAskWorkerPay = "Trả cho người trực bao nhiêu (VND)?"
	msgBadWorkerPay = "Mức chi trả không hợp lệ, chọn một trong các mức có sẵn nhé."
	msgAskActualEnd = "Giờ kết thúc thực tế (HH:MM, ví dụ 23:45):"
	msgBadActualEnd = "Giờ không hợp lệ. Ví dụ hợp lệ: 23:10"

	msgRemoteError = "Có lỗi khi ghi dữ liệu lên GitHub, thử lại sau nhé."
	msgConfigError = "Cấu hình loại sự kiện không hợp lệ, báo admin giúp nhé."
	msgNotFound    = "Không tìm thấy bản ghi (dữ liệu có thể đã thay đổi). Mở lại danh sách bằng /shifts nhé."

	msgEmptyList    = "Chưa có ca nào được lưu. Gõ /newshift để tạo log mới."
	msgBadSelection = "Chọn một số trong danh sách nhé."
	msgCannotEdit   = "Bản ghi này có dữ liệu không đọc được nên không thể sửa."
	msgUndone       = "Đã xoá bản ghi vừa lưu."
	msgUpdated      = "Đã cập nhật!"
	msgDeleted      = "Đã xoá!"
	msgGoodbye      = "OK, hẹn gặp lại! 👋"

	msgDeleteConfirmFirst = "Bạn có chắc muốn xoá ca này?"
	msgDeleteConfirmFinal = "Xác nhận lần cuối: xoá vĩnh viễn bản ghi này? Hành động không thể hoàn tác."
)

func greeting(catalog shift.Catalog) string {
	return fmt.Sprintf(
		"Chào bạn! Gõ /newshift để tạo log mới, /shifts để xem các ca gần đây.\nHỗ trợ các sự kiện: %s.\nTrong quá trình nhập, gõ /cancel nếu muốn huỷ.",
		strings.Join(catalog.Labels(), ", "),
	)
}

func summary(r shift.Record) string {
	return fmt.Sprintf(
		"💾 Đã lưu!\n🗓️ %s – %s tại %s\n👤 Người trực: %s\n💰 Base pay: %d | ⏱️ OT: %d | 💵 Tổng: %d | 📉 Ròng: %d",
		r.Date.Format("2006-01-02"), r.EventLabel, r.Venue,
		r.PerformedBy.Display(),
		r.BasePay, r.OTPay, r.TotalPay, r.NetIncome,
	)
}

func listingLine(i int, row shift.Row) string {
	return fmt.Sprintf("%d. %s – %s tại %s (tổng %s)",
		i+1, row["date"], row["event_type"], row["venue"], row["total_pay"])
}

func listing(entries []entry) string {
	lines := make([]string, 0, len(entries)+1)
	lines = append(lines, "Các ca gần đây (mới nhất trước):")
	for i, e := range entries {
		lines = append(lines, listingLine(i, e.row))
	}
	return strings.Join(lines, "\n")
}

func detail(row shift.Row) string {
	return fmt.Sprintf(
		"🗓️ %s – %s tại %s\n👤 Người trực: %s\n🕒 %s → %s (kết thúc %s)\n💰 Base: %s | OT: %s phút / %s | Tổng: %s\n🧾 Thuê: %s | Ròng: %s",
		row["date"], row["event_type"], row["venue"],
		row["performed_by"],
		row["start_time"], row["scheduled_end_time"], row["actual_end_time"],
		row["base_pay"], row["ot_minutes"], row["ot_pay"], row["total_pay"],
		row["worker_payment"], row["net_income"],
	)
}

func editDiff(before shift.Row, after shift.Record) string {
	return fmt.Sprintf("Kiểm tra lại:\n— Trước —\n%s\n— Sau —\n%s\nXác nhận cập nhật?",
		detail(before), detail(after.Row()))
}

func tierKeyboard(tiers []int) [][]string {
	rows := make([][]string, 0, len(tiers)+1)
	for _, tier := range tiers {
		rows = append(rows, []string{strconv.Itoa(tier)})
	}
	return append(rows, []string{labelExit})
}

func eventKeyboard(catalog shift.Catalog) [][]string {
	rows := [][]string{}
	for _, label := range catalog.Labels() {
		rows = append(rows, []string{label})
	}
	return append(rows, []string{labelExit})
}

func selectionKeyboard(n int) [][]string {
	row := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		row = append(row, strconv.Itoa(i))
	}
	return [][]string{row, {labelExit}}
}
