package domain

import (
	"encoding/binary"
	"hash/fnv"
	"math"
	"strconv"
)

// Record - одна строка датасета. Отсутствующие или пустые ячейки представлены nil
type Record struct {
	ID        *string  `json:"id"`
	Name      *string  `json:"name"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

// HasCoordinates - обе координаты распознаны
func (r Record) HasCoordinates() bool {
	return r.Latitude != nil && r.Longitude != nil
}

// Dataset - загруженные записи и параллельные колонки координат.
// Отсутствующая координата хранится в колонке как NaN. После NewDataset
// датасет не меняется и безопасен для конкурентного чтения
type Dataset struct {
	records     []Record
	latitudes   []float64
	longitudes  []float64
	fingerprint string
}

func NewDataset(records []Record) *Dataset {
	ds := &Dataset{
		records:    records,
		latitudes:  make([]float64, len(records)),
		longitudes: make([]float64, len(records)),
	}
	for i, r := range records {
		ds.latitudes[i] = valueOrNaN(r.Latitude)
		ds.longitudes[i] = valueOrNaN(r.Longitude)
	}
	ds.fingerprint = ds.hashContents()
	return ds
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}

// hashContents - FNV-64a по числу строк, координатам и id/name каждой записи
func (d *Dataset) hashContents() string {
	h := fnv.New64a()
	var buf [8]byte
	writeUint := func(v uint64) {
		binary.LittleEndian.PutUint64(buf[:], v)
		_, _ = h.Write(buf[:])
	}
	writeText := func(s *string) {
		if s == nil {
			writeUint(math.MaxUint64)
			return
		}
		writeUint(uint64(len(*s)))
		_, _ = h.Write([]byte(*s))
	}

	writeUint(uint64(len(d.records)))
	for i, r := range d.records {
		writeUint(math.Float64bits(d.latitudes[i]))
		writeUint(math.Float64bits(d.longitudes[i]))
		writeText(r.ID)
		writeText(r.Name)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}

func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.records)
}

func (d *Dataset) Record(i int) Record {
	return d.records[i]
}

// Latitudes - колонка широт. Вызывающий код не должен её изменять
func (d *Dataset) Latitudes() []float64 {
	return d.latitudes
}

// Longitudes - колонка долгот. Вызывающий код не должен её изменять
func (d *Dataset) Longitudes() []float64 {
	return d.longitudes
}

// Fingerprint - хеш содержимого датасета. Совпадает только у датасетов
// с одинаковыми записями; используется для изоляции ключей кеша
func (d *Dataset) Fingerprint() string {
	if d == nil {
		return NewDataset(nil).fingerprint
	}
	return d.fingerprint
}

// Neighbor - запись датасета вместе с расстоянием до точки запроса
type Neighbor struct {
	Index      int     `json:"index"`
	Record     Record  `json:"record"`
	DistanceKm float64 `json:"distance_km"`
}

// LoadResult - итог однократной загрузки: датасет либо ошибка, которая ей помешала
type LoadResult struct {
	dataset *Dataset
	err     error
}

func Loaded(ds *Dataset) LoadResult {
	return LoadResult{dataset: ds}
}

func LoadFailed(err error) LoadResult {
	return LoadResult{err: err}
}

// Dataset возвращает датасет или сохранённую ошибку загрузки
func (r LoadResult) Dataset() (*Dataset, error) {
	if r.err != nil {
		return nil, r.err
	}
	return r.dataset, nil
}

func (r LoadResult) Err() error {
	return r.err
}
