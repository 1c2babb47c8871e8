package postprocess

// VOCLabels are the class labels of the Caffe MobileNet SSD model trained on
// PASCAL VOC, index 0 is the background class
var VOCLabels = []string{
	"background", "aeroplane", "bicycle", "bird", "boat",
	"bottle", "bus", "car", "cat", "chair", "cow", "diningtable",
	"dog", "horse", "motorbike", "person", "pottedplant", "sheep",
	"sofa", "train", "tvmonitor",
}

// LabelIndex returns the index of name in labels or -1 if it is not present
func LabelIndex(labels []string, name string) int {
	for i, l := range labels {
		if l == name {
			return i
		}
	}
	return -1
}
